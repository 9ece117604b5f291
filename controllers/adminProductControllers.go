package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"breboot/configuration"
	"breboot/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// CreateProduct adds a product. Discounted prices are derived from oldPrice:
// 30% off for doctors, 20% off for other users.
func CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	oldPrice := c.PostForm("oldPrice")
	status := c.PostForm("status")

	if name == "" || description == "" || oldPrice == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, description, old Price, and status are required"})
		return
	}

	oldPriceValue, err := strconv.ParseFloat(oldPrice, 64)
	if err != nil || oldPriceValue <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid old price"})
		return
	}

	inStock := true
	if raw := c.PostForm("inStock"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inStock value"})
			return
		}
		inStock = parsed
	}

	var imagePath string
	if file, err := c.FormFile("product_image"); err == nil {
		imagePath, err = saveUploadedImage(c, file, "assets/images/products")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
			return
		}
	}

	product := models.Product{
		Name:              name,
		Description:       description,
		OldPrice:          oldPriceValue,
		PriceForDoctor:    round2(oldPriceValue * 0.7),
		PriceForOtherUser: round2(oldPriceValue * 0.8),
		ProductImage:      imagePath,
		Status:            status,
		InStock:           inStock,
	}
	if err := configuration.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error: " + err.Error()})
		return
	}

	stockMessage := "Product is in stock"
	if !inStock {
		stockMessage = "Currently, product is out of stock"
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Product created successfully",
		"stockStatus": stockMessage,
		"product":     product,
	})
}

func GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := configuration.DB.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProductByID(c *gin.Context) {
	var product models.Product
	if err := configuration.DB.First(&product, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := configuration.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		product.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		product.Description = description
	}
	if oldPrice := c.PostForm("oldPrice"); oldPrice != "" {
		value, err := strconv.ParseFloat(oldPrice, 64)
		if err != nil || value <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid old price"})
			return
		}
		product.OldPrice = value
		product.PriceForDoctor = round2(value * 0.7)
		product.PriceForOtherUser = round2(value * 0.8)
	}
	if status := c.PostForm("status"); status != "" {
		product.Status = status
	}
	if raw := c.PostForm("inStock"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inStock value"})
			return
		}
		product.InStock = parsed
	}
	if file, err := c.FormFile("product_image"); err == nil {
		path, err := saveUploadedImage(c, file, "assets/images/products")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
			return
		}
		product.ProductImage = path
	}

	if err := configuration.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	stockMessage := "Product is in stock"
	if !product.InStock {
		stockMessage = "Currently, product is out of stock"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Product updated successfully",
		"stockStatus": stockMessage,
		"product":     product,
	})
}

func DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := configuration.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err := configuration.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
