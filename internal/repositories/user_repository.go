package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"alumnihub/internal/authz"
	"alumnihub/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(userID int, hash string, changedAt time.Time) error
	SetAccountDeleted(userID int, deleted bool) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, full_name, user_name, email, password_hash, role,
	student_status, year_group, occupation, year_class, residency, hall,
	about, profile_image, background_image, affiliated_groups,
	password_changed_at, is_account_deleted, created_at, updated_at
`

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			full_name, user_name, email, password_hash, role,
			student_status, year_group, occupation, year_class, residency, hall,
			about, profile_image, background_image, affiliated_groups
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(q,
		user.FullName,
		user.UserName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.StudentStatus,
		user.YearGroup,
		user.Occupation,
		user.YearClass,
		user.Residency,
		user.Hall,
		user.About,
		user.ProfileImage,
		user.BackgroundImage,
		pq.Array(user.AffiliatedGroups),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		role      string
		changedAt sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.FullName, &u.UserName, &u.Email, &u.PasswordHash, &role,
		&u.StudentStatus, &u.YearGroup, &u.Occupation, &u.YearClass, &u.Residency, &u.Hall,
		&u.About, &u.ProfileImage, &u.BackgroundImage, pq.Array(&u.AffiliatedGroups),
		&changedAt, &u.IsAccountDeleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role = authz.Role(role)
	if changedAt.Valid {
		t := changedAt.Time
		u.PasswordChangedAt = &t
	}
	return u, nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return r.scanOne(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.scanOne(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = LOWER($1)`, email))
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	return r.scanOne(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_name = $1`, username))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET
			full_name=$1,
			user_name=$2,
			year_group=$3,
			occupation=$4,
			about=$5,
			profile_image=$6,
			background_image=$7,
			affiliated_groups=$8,
			is_account_deleted=$9,
			updated_at=NOW()
		WHERE id=$10
	`
	_, err := r.DB.Exec(q,
		user.FullName,
		user.UserName,
		user.YearGroup,
		user.Occupation,
		user.About,
		user.ProfileImage,
		user.BackgroundImage,
		pq.Array(user.AffiliatedGroups),
		user.IsAccountDeleted,
		user.ID,
	)
	return err
}

func (r *userRepository) UpdatePassword(userID int, hash string, changedAt time.Time) error {
	const q = `
		UPDATE users
		SET password_hash=$1, password_changed_at=$2, updated_at=NOW()
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, hash, changedAt, userID)
	return err
}

func (r *userRepository) SetAccountDeleted(userID int, deleted bool) error {
	const q = `
		UPDATE users SET is_account_deleted=$1, updated_at=NOW() WHERE id=$2
	`
	_, err := r.DB.Exec(q, deleted, userID)
	return err
}
