package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goshopper-backend-go/internal/core"
	"goshopper-backend-go/internal/models"
)

// ShoppingListHandler handles API endpoints related to shopping lists.
type ShoppingListHandler struct {
	listService core.ShoppingListService
}

// NewShoppingListHandler creates a new ShoppingListHandler.
func NewShoppingListHandler(ls core.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{listService: ls}
}

// CreateList handles POST /shopping-lists.
func (h *ShoppingListHandler) CreateList(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req models.CreateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	list, err := h.listService.Create(c.Request.Context(), userID, req)
	if err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// ListLists handles GET /shopping-lists.
func (h *ShoppingListHandler) ListLists(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	lists, err := h.listService.List(c.Request.Context(), userID)
	if err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// GetList handles GET /shopping-lists/:listId.
func (h *ShoppingListHandler) GetList(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}
	listID := c.Param("listId")
	if listID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "List ID is required"})
		return
	}

	list, err := h.listService.GetByID(c.Request.Context(), userID, listID)
	if err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateList handles PUT /shopping-lists/:listId. Item check/uncheck goes
// through here as a full items replacement.
func (h *ShoppingListHandler) UpdateList(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}
	listID := c.Param("listId")
	if listID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "List ID is required"})
		return
	}

	var req models.UpdateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	list, err := h.listService.Update(c.Request.Context(), userID, listID, req)
	if err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteList handles DELETE /shopping-lists/:listId.
func (h *ShoppingListHandler) DeleteList(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}
	listID := c.Param("listId")
	if listID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "List ID is required"})
		return
	}

	if err := h.listService.Delete(c.Request.Context(), userID, listID); err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Shopping list deleted successfully"})
}
