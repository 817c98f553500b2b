package controllers

import (
	"log"
	"net/http"
	"os"

	"cloud.google.com/go/auth/credentials/idtoken"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/vnkhanh/podcast-catalog-api/models"
	"github.com/vnkhanh/podcast-catalog-api/services"
	"github.com/vnkhanh/podcast-catalog-api/utils"
)

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ====== HANDLERS ======
func Register(c *gin.Context) {
	db := getDB(c)

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": services.ErrKindValidation})
		return
	}

	// Email trùng -> conflict, không tạo bản ghi nào
	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email đã được sử dụng", "kind": services.ErrKindConflict})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể mã hoá mật khẩu", "kind": services.ErrKindInternal})
		return
	}

	newUser := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      models.RoleUser,
	}
	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tạo người dùng", "kind": services.ErrKindInternal})
		return
	}

	token, err := utils.GenerateToken(db, &newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo token", "kind": services.ErrKindInternal})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Đăng ký thành công",
		"user":    newUser,
		"token":   token,
	})
}

func Login(c *gin.Context) {
	db := getDB(c)

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": services.ErrKindValidation})
		return
	}

	var user models.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email hoặc mật khẩu không đúng", "kind": services.ErrKindUnauthenticated})
		return
	}

	// Chỉ so bằng bcrypt, không bao giờ so chuỗi hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email hoặc mật khẩu không đúng", "kind": services.ErrKindUnauthenticated})
		return
	}

	token, err := utils.GenerateToken(db, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo token", "kind": services.ErrKindInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Đăng nhập thành công",
		"token":   token,
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"role":       user.Role,
		},
	})
}

type GoogleLoginInput struct {
	IDToken string `json:"id_token" binding:"required"`
}

func GoogleLogin(c *gin.Context) {
	db := getDB(c)

	var input GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": services.ErrKindValidation})
		return
	}

	// Xác minh token với đúng GOOGLE_CLIENT_ID
	payload, err := idtoken.Validate(c, input.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token Google không hợp lệ", "kind": services.ErrKindUnauthenticated})
		return
	}

	email, _ := payload.Claims["email"].(string)
	firstName, _ := payload.Claims["given_name"].(string)
	lastName, _ := payload.Claims["family_name"].(string)

	// Chưa có tài khoản thì tạo mới với role user
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		user = models.User{
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			Role:      models.RoleUser,
			// Password để trống vì login Google
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo user Google", "kind": services.ErrKindInternal})
			return
		}
	}

	token, err := utils.GenerateToken(db, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo token", "kind": services.ErrKindInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"role":       user.Role,
		},
	})
}

// Logout thu hồi đúng token đang dùng, các phiên khác của user vẫn đăng nhập
func Logout(c *gin.Context) {
	db := getDB(c)

	tokenString := c.GetString("token")
	if err := utils.RevokeToken(db, tokenString); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đăng xuất", "kind": services.ErrKindInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đăng xuất thành công"})
}

func Me(c *gin.Context) {
	db := getDB(c)

	var user models.User
	if err := db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy người dùng", "kind": services.ErrKindNotFound})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ==== ADMIN TẠO TÀI KHOẢN HOST ====
type CreateHostAccountInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

func AdminCreateHostAccount(c *gin.Context) {
	db := getDB(c)

	// Ghi lên tài khoản người dùng: chỉ admin
	if err := services.DecideAccountWrite(currentActor(c)); err != nil {
		respondError(c, err)
		return
	}

	var input CreateHostAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": services.ErrKindValidation})
		return
	}

	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email đã tồn tại", "kind": services.ErrKindConflict})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể mã hoá mật khẩu", "kind": services.ErrKindInternal})
		return
	}

	newUser := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      models.RoleHost,
	}
	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo tài khoản", "kind": services.ErrKindInternal})
		return
	}

	// Gửi email thông báo (không chặn luồng)
	go func() {
		subject := "Tài khoản host podcast của bạn đã được tạo"
		body := `
		<h3>Xin chào ` + input.FirstName + ` ` + input.LastName + `,</h3>
		<p>Bạn đã được cấp tài khoản host trên hệ thống <b>Podcast Catalog</b>.</p>
		<p><b>Email đăng nhập:</b> ` + input.Email + `</p>
		<p>Vui lòng đăng nhập và đổi mật khẩu sau khi sử dụng lần đầu.</p>
		<hr>
		<p><i>Đây là email tự động, vui lòng không trả lời.</i></p>
		`
		if err := utils.SendEmail(input.Email, subject, body); err != nil {
			log.Printf("Lỗi gửi email: %v", err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo tài khoản host thành công",
		"user": gin.H{
			"id":         newUser.ID,
			"first_name": newUser.FirstName,
			"last_name":  newUser.LastName,
			"email":      newUser.Email,
			"role":       newUser.Role,
		},
	})
}
