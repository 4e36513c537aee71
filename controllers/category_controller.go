// file: controllers/category_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xFraylin/Hackong-ctf/dto"
	"github.com/xFraylin/Hackong-ctf/models"
	"github.com/xFraylin/Hackong-ctf/utils"
	"gorm.io/gorm"
)

type CategoryController struct {
	db *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{db: db}
}

func (ctl *CategoryController) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := ctl.db.Order("name asc").Find(&categories).Error; err != nil {
		utils.Error(c, 5000, "Error al consultar las categorías")
		return
	}
	utils.Success(c, "success", gin.H{
		"total":      len(categories),
		"categories": categories,
	})
}

func (ctl *CategoryController) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := ctl.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, 2001, "Ya existe una categoría con ese nombre")
			return
		}
		utils.Error(c, 5000, "No se pudo crear la categoría")
		return
	}
	utils.Success(c, "Categoría creada", gin.H{"id": category.ID})
}

func (ctl *CategoryController) UpdateCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var category models.Category
	if err := ctl.db.First(&category, id).Error; err != nil {
		utils.Error(c, 4004, "Categoría no encontrada")
		return
	}

	var req dto.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "Parámetros inválidos: "+err.Error())
		return
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := ctl.db.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, 2001, "Ya existe una categoría con ese nombre")
			return
		}
		utils.Error(c, 5000, "No se pudo actualizar la categoría")
		return
	}
	utils.Success(c, "Categoría actualizada", nil)
}

// DeleteCategory clears the reference on any challenge pointing at it; a
// challenge without category simply renders as "no category".
func (ctl *CategoryController) DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var category models.Category
	if err := ctl.db.First(&category, id).Error; err != nil {
		utils.Error(c, 4004, "Categoría no encontrada")
		return
	}

	err := ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Challenge{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		utils.Error(c, 5000, "No se pudo eliminar la categoría")
		return
	}
	utils.Success(c, "Categoría eliminada", nil)
}
