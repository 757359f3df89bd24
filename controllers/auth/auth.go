package authControllers

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/middleware"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     *string         `json:"name"`
	Email    *string         `json:"email"`
	Password *string         `json:"password"`
	Phone    *string         `json:"phone"`
	Address  *models.Address `json:"address"`
}

// SafeUser is the projection returned by every auth endpoint; it never
// carries the password hash.
type SafeUser struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address models.Address `json:"address"`
	Role    models.Role    `json:"role"`
}

type authResponse struct {
	User  SafeUser `json:"user"`
	Token string   `json:"token"`
}

func safeUser(u *models.User) SafeUser {
	return SafeUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
	}
}

// issueToken signs a 30-day HS256 token bound to the user id.
func issueToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// -------- Core Logic --------

// Register creates a user with a bcrypt-hashed password and role=user.
func Register(db *gorm.DB, req RegisterRequest) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, httpapi.Conflict("user with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httpapi.Persistence(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httpapi.Persistence(err)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		// A registration racing past the existence check loses on the
		// unique index; report it as the same conflict.
		if isDuplicateEmail(err) {
			return nil, httpapi.Conflict("user with this email already exists")
		}
		return nil, httpapi.Persistence(err)
	}
	return &user, nil
}

func isDuplicateEmail(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

// Login checks the credentials and returns the user. Unknown email and wrong
// password produce the same message on purpose.
func Login(db *gorm.DB, req LoginRequest) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpapi.Authentication("invalid email or password")
		}
		return nil, httpapi.Persistence(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, httpapi.Authentication("invalid email or password")
	}
	return &user, nil
}

// -------- Handlers --------

// POST /api/auth/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}
		user, err := Register(db, req)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		token, err := issueToken(user.ID)
		if err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusCreated, authResponse{User: safeUser(user), Token: token})
	}
}

// POST /api/auth/login
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}
		user, err := Login(db, req)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		token, err := issueToken(user.ID)
		if err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, authResponse{User: safeUser(user), Token: token})
	}
}

// GET /api/auth/profile
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		httpapi.OK(c, http.StatusOK, safeUser(user))
	}
}

// PUT /api/auth/profile
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil && *req.Email != user.Email {
			var count int64
			if err := db.Model(&models.User{}).
				Where("email = ? AND id <> ?", *req.Email, user.ID).
				Count(&count).Error; err != nil {
				httpapi.Fail(c, httpapi.Persistence(err))
				return
			}
			if count > 0 {
				httpapi.Fail(c, httpapi.Conflict("user with this email already exists"))
				return
			}
			user.Email = *req.Email
		}
		if req.Password != nil {
			if len(*req.Password) < 6 {
				httpapi.Fail(c, httpapi.Validation("password must be at least 6 characters"))
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				httpapi.Fail(c, httpapi.Persistence(err))
				return
			}
			user.Password = string(hash)
		}
		if req.Phone != nil {
			user.Phone = *req.Phone
		}
		if req.Address != nil {
			user.Address = *req.Address
		}

		if err := db.Save(user).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}

		token, err := issueToken(user.ID)
		if err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, authResponse{User: safeUser(user), Token: token})
	}
}
