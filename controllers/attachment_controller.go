// file: controllers/attachment_controller.go
package controllers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xFraylin/Hackong-ctf/models"
	"github.com/xFraylin/Hackong-ctf/services"
	"github.com/xFraylin/Hackong-ctf/utils"
	"gorm.io/gorm"
)

// 50 MiB, same ceiling the web form enforces.
const maxAttachmentSize = 50 << 20

type AttachmentController struct {
	db     *gorm.DB
	upload *services.UploadService
}

func NewAttachmentController(db *gorm.DB, upload *services.UploadService) *AttachmentController {
	return &AttachmentController{db: db, upload: upload}
}

// UploadChallengeFile receives a multipart file and attaches it to the
// challenge. The challenge record is only touched after the object is safely
// stored, so a failed upload never leaves a dangling URL behind.
func (ctl *AttachmentController) UploadChallengeFile(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var ch models.Challenge
	if err := ctl.db.First(&ch, id).Error; err != nil {
		utils.Error(c, 4004, "Reto no encontrado")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, 1001, "Falta el archivo adjunto")
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		utils.Error(c, 1003, "El archivo supera el tamaño máximo permitido")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		utils.Error(c, 5000, "No se pudo leer el archivo")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAttachmentSize+1))
	if err != nil {
		utils.Error(c, 5000, "No se pudo leer el archivo")
		return
	}
	if len(data) > maxAttachmentSize {
		utils.Error(c, 1003, "El archivo supera el tamaño máximo permitido")
		return
	}

	url, checksum, err := ctl.upload.UploadChallengeFile(fileHeader.Filename, data)
	if err != nil {
		utils.Error(c, 5001, "No se pudo subir el archivo, inténtalo de nuevo")
		return
	}

	if err := ctl.db.Model(&ch).Update("file_url", url).Error; err != nil {
		utils.Error(c, 5000, "No se pudo asociar el archivo al reto")
		return
	}

	utils.Success(c, "Archivo subido", gin.H{
		"file_url": url,
		"sha256":   checksum,
	})
}

// RemoveChallengeFile detaches the attachment from a challenge.
func (ctl *AttachmentController) RemoveChallengeFile(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var ch models.Challenge
	if err := ctl.db.First(&ch, id).Error; err != nil {
		utils.Error(c, 4004, "Reto no encontrado")
		return
	}
	if ch.FileURL == "" {
		utils.Success(c, "El reto no tiene archivo adjunto", nil)
		return
	}

	if err := ctl.db.Model(&ch).Update("file_url", "").Error; err != nil {
		utils.Error(c, 5000, "No se pudo quitar el archivo del reto")
		return
	}
	utils.Success(c, "Archivo eliminado del reto", nil)
}
