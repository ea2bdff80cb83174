package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NJ-LDS/reading-service/internal/services"
	"github.com/NJ-LDS/reading-service/internal/utils"
)

type HandlerManager struct {
	serviceManager    services.ServiceManager
	userHandler       *UserHandler
	materialHandler   *MaterialHandler
	formHandler       *FormHandler
	formConfigHandler *FormConfigHandler
	responseHandler   *ResponseHandler
	logHandler        *LogHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		serviceManager:    serviceManager,
		userHandler:       NewUserHandler(serviceManager.User(), logger),
		materialHandler:   NewMaterialHandler(serviceManager.Material(), serviceManager.Assignment(), logger),
		formHandler:       NewFormHandler(serviceManager.Form(), logger),
		formConfigHandler: NewFormConfigHandler(serviceManager.FormConfig(), logger),
		responseHandler:   NewResponseHandler(serviceManager.Response(), logger),
		logHandler:        NewLogHandler(serviceManager.Log(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/login", hm.userHandler.Login)

		users := api.Group("/users")
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:phone_number", hm.userHandler.GetUser)
			users.PUT("/:phone_number", hm.userHandler.UpdateUser)
			users.DELETE("/:phone_number", hm.userHandler.DeleteUser)
			users.PUT("/:phone_number/consent", hm.userHandler.UpdateConsent)
			users.GET("/:phone_number/materials", hm.materialHandler.GetUserMaterials)
		}

		materials := api.Group("/materials")
		{
			materials.POST("", hm.materialHandler.CreateMaterial)
			materials.GET("", hm.materialHandler.ListMaterials)
			materials.GET("/:id", hm.materialHandler.GetMaterial)
			materials.PUT("/:id", hm.materialHandler.UpdateMaterial)
			materials.DELETE("/:id", hm.materialHandler.DeleteMaterial)

			// Assignment lifecycle
			materials.POST("/:id/assign", hm.materialHandler.AssignMaterial)
			materials.DELETE("/:id/unassign/:user_id", hm.materialHandler.UnassignMaterial)
			materials.PUT("/:id/mark-read/:user_id", hm.materialHandler.MarkRead)
			materials.PUT("/:id/mark-unread/:user_id", hm.materialHandler.MarkUnread)

			// Form trigger resolution
			materials.GET("/:id/forms", hm.formConfigHandler.GetMaterialForms)
		}

		forms := api.Group("/forms")
		{
			forms.POST("", hm.formHandler.CreateForm)
			forms.GET("", hm.formHandler.ListForms)
			forms.GET("/:id", hm.formHandler.GetForm)
			forms.PUT("/:id", hm.formHandler.UpdateForm)
			forms.DELETE("/:id", hm.formHandler.DeleteForm)
		}

		formConfigs := api.Group("/material-form-configs")
		{
			formConfigs.POST("", hm.formConfigHandler.CreateFormConfig)
			formConfigs.PUT("/:id", hm.formConfigHandler.UpdateFormConfig)
			formConfigs.DELETE("/:id", hm.formConfigHandler.DeleteFormConfig)
		}

		responses := api.Group("/user-responses")
		{
			responses.POST("", hm.responseHandler.SubmitResponse)
			responses.GET("/user/:user_id", hm.responseHandler.GetUserResponses)
			responses.GET("/material/:material_id", hm.responseHandler.GetMaterialResponses)
		}

		admin := api.Group("/admin")
		{
			adminResponses := admin.Group("/user-responses")
			{
				adminResponses.GET("", hm.responseHandler.ListResponses)
				adminResponses.GET("/:id", hm.responseHandler.GetResponse)
				adminResponses.PUT("/:id", hm.responseHandler.UpdateResponse)
				adminResponses.DELETE("/:id", hm.responseHandler.DeleteResponse)
				adminResponses.GET("/:id/download", hm.responseHandler.DownloadResponse)
				adminResponses.POST("/export", hm.responseHandler.ExportResponses)
			}
		}

		logs := api.Group("/logs")
		{
			logs.POST("", hm.logHandler.CreateLog)
			logs.GET("", hm.logHandler.ListLogs)
			logs.GET("/user/:user_id", hm.logHandler.ListUserLogs)
			logs.GET("/material/:material_id", hm.logHandler.ListMaterialLogs)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "reading-service",
		})
	})
}
