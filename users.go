// users.go

package main

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type userRequest struct {
	Name     string   `json:"name" binding:"required,min=2"`
	Email    string   `json:"email" binding:"required,email"`
	Age      int      `json:"age" binding:"required,gt=0"`
	Password string   `json:"password" binding:"required,min=6"`
	Address  Address  `json:"address"`
	Role     string   `json:"role" binding:"omitempty,oneof=user admin"`
	Hobbies  []string `json:"hobbies"`
}

type userUpdateRequest struct {
	Name     string   `json:"name" binding:"required,min=2"`
	Email    string   `json:"email" binding:"required,email"`
	Age      int      `json:"age" binding:"required,gt=0"`
	Password string   `json:"password" binding:"omitempty,min=6"`
	Address  Address  `json:"address"`
	Role     string   `json:"role" binding:"omitempty,oneof=user admin"`
	Hobbies  []string `json:"hobbies"`
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "", users)
}

func (s *server) getUser(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := s.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "", user)
}

func (s *server) createUser(c *gin.Context) {
	var req userRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	hashed, err := hashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	user := User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Age:      req.Age,
		Password: hashed,
		Address:  req.Address,
		Role:     req.Role,
		IsActive: true,
		Hobbies:  req.Hobbies,
	}
	if user.Role == "" {
		user.Role = "user"
	}
	if err := s.users.Insert(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 201, "User created successfully", user)
}

func (s *server) updateUser(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req userUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	user, err := s.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	user.Name = strings.TrimSpace(req.Name)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Age = req.Age
	user.Address = req.Address
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Hobbies != nil {
		user.Hobbies = req.Hobbies
	}
	// Only rehash when the caller actually sent a new password.
	if req.Password != "" {
		hashed, err := hashPassword(req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		user.Password = hashed
	}
	if err := s.users.Update(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "User updated successfully", user)
}

func (s *server) deleteUser(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "User deleted successfully", nil)
}

// ----- Login -----

type jwtClaims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *server) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	user, err := s.users.GetByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		respondError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(401, apiResponse{Success: false, Message: "wrong password"})
		return
	}
	claims := jwtClaims{
		UserID: user.ID.Hex(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.jwtSecret)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, 200, "", gin.H{"user": user, "token": tokenStr})
}
