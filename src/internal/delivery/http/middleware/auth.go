package middleware

import (
	"strings"

	"finance-service/src/internal/model"
	httpError "finance-service/src/pkg/http-error"
	"finance-service/src/pkg/log"
	"finance-service/src/pkg/token"
	"finance-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

const authLocal = "auth"

func VerifyBearer(cfg *viper.Viper) fiber.Handler {
	secret := cfg.GetString("auth.jwt.secret")
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		claim, err := token.Parse(secret, raw)
		if err != nil {
			log.GetLogger().Error("middleware", err.Error(), "VerifyBearer", ctx.Path())
			errObj := httpError.NewUnauthorized()
			errObj.Message = "invalid token"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals(authLocal, &model.Auth{
			UserID:   claim.Metadata.UserID,
			FullName: claim.Metadata.FullName,
			Role:     claim.Metadata.Role,
		})
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) *model.Auth {
	auth, ok := ctx.Locals(authLocal).(*model.Auth)
	if !ok {
		return &model.Auth{}
	}
	return auth
}
