package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	ucAccount "github.com/BruksfildServices01/lavanderia-scheduler/internal/usecase/account"
)

type UserRequest struct {
	Username   string `json:"username" binding:"required,max=150"`
	Email      string `json:"email" binding:"omitempty,email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Bolsista   bool   `json:"bolsista"`
	Enrollment string `json:"enrollment"`
	Apartment  string `json:"apartment"`
	Phone      string `json:"phone"`
}

type UserHandler struct {
	repo laundry.Repository
	save *ucAccount.SaveUser
}

func NewUserHandler(repo laundry.Repository, save *ucAccount.SaveUser) *UserHandler {
	return &UserHandler{repo: repo, save: save}
}

func (h *UserHandler) Resource() Resource[UserRequest] {
	return Resource[UserRequest]{
		Kind: "usuário",
		List: func(c *gin.Context) ([]any, error) {
			users, err := h.repo.ListUsers(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return items(users), nil
		},
		Save: func(c *gin.Context, id *uint, in UserRequest) (any, error) {
			input := ucAccount.UserInput{
				Username:   in.Username,
				Email:      in.Email,
				Password:   in.Password,
				Name:       in.Name,
				Bolsista:   in.Bolsista,
				Enrollment: in.Enrollment,
				Apartment:  in.Apartment,
				Phone:      in.Phone,
			}
			if id == nil {
				return h.save.Create(c.Request.Context(), actorID(c), input)
			}
			return h.save.Update(c.Request.Context(), actorID(c), *id, input)
		},
		Delete: func(c *gin.Context, id uint) error {
			return h.save.Delete(c.Request.Context(), actorID(c), id)
		},
	}
}
