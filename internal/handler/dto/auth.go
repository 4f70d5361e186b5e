package dto

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse возвращается при успешной регистрации или входе
type AuthResponse struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token,omitempty"`
	// ExpiresIn — срок жизни токена в секундах; только в ответе на вход
	ExpiresIn int64 `json:"expires_in,omitempty"`
}
