// file: routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/xFraylin/Hackong-ctf/config"
	"github.com/xFraylin/Hackong-ctf/controllers"
	"github.com/xFraylin/Hackong-ctf/middlewares"
	"github.com/xFraylin/Hackong-ctf/services"
	"github.com/xFraylin/Hackong-ctf/utils"
	"gorm.io/gorm"
)

// SetupRouter builds every service and controller and mounts the route tree.
func SetupRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage services.ObjectStorage) *gin.Engine {
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)

	ranking := services.NewRankingService(db, rdb)
	scoring := services.NewScoringService(db, ranking)
	reset := services.NewPasswordResetService(db, rdb)
	upload := services.NewUploadService(storage)

	userCtl := controllers.NewUserController(db, tokens, reset, cfg)
	challengeCtl := controllers.NewChallengeController(db)
	submissionCtl := controllers.NewSubmissionController(scoring)
	roomCtl := controllers.NewRoomController(db)
	categoryCtl := controllers.NewCategoryController(db)
	rankingCtl := controllers.NewRankingController(db, ranking)
	attachmentCtl := controllers.NewAttachmentController(db, upload)

	r := gin.Default()

	// Attachments are served straight off disk.
	r.Static("/files", cfg.UploadDir)

	api := r.Group("/api")
	{
		api.POST("/register", userCtl.Register)
		api.POST("/check-username", userCtl.CheckUsername)
		api.POST("/login", userCtl.Login)
		api.POST("/logout", userCtl.Logout)
		api.POST("/password-reset/request", userCtl.RequestPasswordReset)
		api.POST("/password-reset/confirm", userCtl.ConfirmPasswordReset)
	}

	auth := r.Group("/api", middlewares.SessionGate(tokens))
	{
		auth.GET("/dashboard", rankingCtl.GetDashboard)
		auth.GET("/ranking", rankingCtl.GetRanking)

		auth.GET("/perfil", userCtl.GetProfile)
		auth.PUT("/perfil", userCtl.UpdateProfile)

		auth.GET("/retos", challengeCtl.ListChallenges)
		auth.GET("/retos/:id", challengeCtl.GetChallengeDetail)
		auth.GET("/retos/:id/archivo", challengeCtl.DownloadAttachment)
		auth.POST("/retos/:id/flag", submissionCtl.SubmitFlag)
		auth.POST("/retos/:id/quiz", submissionCtl.SubmitQuiz)

		auth.GET("/salas", roomCtl.ListRooms)
		auth.GET("/salas/:id", roomCtl.GetRoomDetail)

		auth.GET("/categorias", categoryCtl.ListCategories)
	}

	admin := r.Group("/api/admin", middlewares.SessionGate(tokens), middlewares.AdminGate(db))
	{
		admin.GET("/retos", challengeCtl.AdminListChallenges)
		admin.POST("/retos", challengeCtl.CreateChallenge)
		admin.GET("/retos/:id", challengeCtl.AdminGetChallengeDetail)
		admin.PUT("/retos/:id", challengeCtl.UpdateChallenge)
		admin.DELETE("/retos/:id", challengeCtl.DeleteChallenge)
		admin.POST("/retos/:id/archivo", attachmentCtl.UploadChallengeFile)
		admin.DELETE("/retos/:id/archivo", attachmentCtl.RemoveChallengeFile)

		admin.GET("/categorias", categoryCtl.ListCategories)
		admin.POST("/categorias", categoryCtl.CreateCategory)
		admin.PUT("/categorias/:id", categoryCtl.UpdateCategory)
		admin.DELETE("/categorias/:id", categoryCtl.DeleteCategory)

		admin.GET("/salas", roomCtl.AdminListRooms)
		admin.POST("/salas", roomCtl.CreateRoom)
		admin.PUT("/salas/:id", roomCtl.UpdateRoom)
		admin.PUT("/salas/:id/retos", roomCtl.AssignChallenges)
		admin.DELETE("/salas/:id", roomCtl.DeleteRoom)

		admin.GET("/usuarios", userCtl.GetUserList)
		admin.PUT("/usuarios/:id/rol", userCtl.UpdateUserRole)
	}

	return r
}
