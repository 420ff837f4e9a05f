package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shoppingListHandler handles HTTP requests for shopping lists and their items.
type shoppingListHandler struct {
	shoppingListService portssvc.ShoppingListSvc
}

func newShoppingListHandler(sls portssvc.ShoppingListSvc) *shoppingListHandler {
	return &shoppingListHandler{shoppingListService: sls}
}

// registerShoppingListRoutes registers routes related to shopping lists.
// Items nest under their owning list.
func registerShoppingListRoutes(rg *gin.RouterGroup, shoppingListService portssvc.ShoppingListSvc) {
	h := newShoppingListHandler(shoppingListService)

	lists := rg.Group("/shopping-lists")
	{
		lists.POST("", h.createList)
		lists.GET("", h.listLists)
		lists.GET("/:id", h.getList)
		lists.PUT("/:id", h.updateList)
		lists.DELETE("/:id", h.deleteList)

		lists.POST("/:id/items", h.addItem)
		lists.PUT("/:id/items/:itemID", h.updateItem)
		lists.DELETE("/:id/items/:itemID", h.deleteItem)
	}
}

// createList godoc
// @Summary Create a shopping list
// @Tags shopping-lists
// @Accept  json
// @Produce  json
// @Param   list body dto.CreateShoppingListRequest true "List details"
// @Success 201 {object} dto.ShoppingListResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /shopping-lists [post]
func (h *shoppingListHandler) createList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateShoppingList", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	list, err := h.shoppingListService.CreateList(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "create shopping list")
		return
	}

	logger.Info("Shopping list created", slog.String("list_id", list.ListID))
	c.JSON(http.StatusCreated, dto.ToShoppingListResponse(list, nil))
}

// getList godoc
// @Summary Get a shopping list with its items
// @Tags shopping-lists
// @Produce  json
// @Param   id path string true "List ID"
// @Success 200 {object} dto.ShoppingListResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "List not found"
// @Security BearerAuth
// @Router /shopping-lists/{id} [get]
func (h *shoppingListHandler) getList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	list, items, err := h.shoppingListService.GetListByID(c.Request.Context(), userID, listID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve shopping list")
		return
	}

	c.JSON(http.StatusOK, dto.ToShoppingListResponse(list, items))
}

// listLists godoc
// @Summary List shopping lists
// @Tags shopping-lists
// @Produce  json
// @Success 200 {array} dto.ShoppingListResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /shopping-lists [get]
func (h *shoppingListHandler) listLists(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	lists, err := h.shoppingListService.ListLists(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "list shopping lists")
		return
	}

	responses := make([]dto.ShoppingListResponse, len(lists))
	for i := range lists {
		responses[i] = dto.ToShoppingListResponse(&lists[i], nil)
	}
	c.JSON(http.StatusOK, responses)
}

// updateList godoc
// @Summary Update a shopping list
// @Tags shopping-lists
// @Accept  json
// @Produce  json
// @Param   id path string true "List ID"
// @Param   list body dto.UpdateShoppingListRequest true "Fields to update"
// @Success 200 {object} dto.ShoppingListResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "List not found"
// @Security BearerAuth
// @Router /shopping-lists/{id} [put]
func (h *shoppingListHandler) updateList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listID := c.Param("id")

	var req dto.UpdateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateShoppingList", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	list, err := h.shoppingListService.UpdateList(c.Request.Context(), userID, listID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update shopping list")
		return
	}

	c.JSON(http.StatusOK, dto.ToShoppingListResponse(list, nil))
}

// deleteList godoc
// @Summary Delete a shopping list and its items
// @Tags shopping-lists
// @Produce  json
// @Param   id path string true "List ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "List not found"
// @Security BearerAuth
// @Router /shopping-lists/{id} [delete]
func (h *shoppingListHandler) deleteList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.shoppingListService.DeleteList(c.Request.Context(), userID, listID); err != nil {
		respondServiceError(c, logger, err, "delete shopping list")
		return
	}

	logger.Info("Shopping list deleted", slog.String("list_id", listID))
	c.Status(http.StatusNoContent)
}

// addItem godoc
// @Summary Add an item to a shopping list
// @Tags shopping-lists
// @Accept  json
// @Produce  json
// @Param   id path string true "List ID"
// @Param   item body dto.CreateShoppingItemRequest true "Item details"
// @Success 201 {object} dto.ShoppingItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "List not found"
// @Security BearerAuth
// @Router /shopping-lists/{id}/items [post]
func (h *shoppingListHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listID := c.Param("id")

	var req dto.CreateShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddShoppingItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.shoppingListService.AddItem(c.Request.Context(), userID, listID, req)
	if err != nil {
		respondServiceError(c, logger, err, "add shopping item")
		return
	}

	c.JSON(http.StatusCreated, dto.ToShoppingItemResponse(item))
}

// updateItem godoc
// @Summary Update a shopping item
// @Description Updates an item; marking it purchased stamps the purchase date
// @Tags shopping-lists
// @Accept  json
// @Produce  json
// @Param   id path string true "List ID"
// @Param   itemID path string true "Item ID"
// @Param   item body dto.UpdateShoppingItemRequest true "Fields to update"
// @Success 200 {object} dto.ShoppingItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "List or item not found"
// @Security BearerAuth
// @Router /shopping-lists/{id}/items/{itemID} [put]
func (h *shoppingListHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listID := c.Param("id")
	itemID := c.Param("itemID")

	var req dto.UpdateShoppingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateShoppingItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.shoppingListService.UpdateItem(c.Request.Context(), userID, listID, itemID, req)
	if err != nil {
		respondServiceError(c, logger, err, "update shopping item")
		return
	}

	c.JSON(http.StatusOK, dto.ToShoppingItemResponse(item))
}

// deleteItem godoc
// @Summary Remove a shopping item
// @Tags shopping-lists
// @Produce  json
// @Param   id path string true "List ID"
// @Param   itemID path string true "Item ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "List or item not found"
// @Security BearerAuth
// @Router /shopping-lists/{id}/items/{itemID} [delete]
func (h *shoppingListHandler) deleteItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listID := c.Param("id")
	itemID := c.Param("itemID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.shoppingListService.DeleteItem(c.Request.Context(), userID, listID, itemID); err != nil {
		respondServiceError(c, logger, err, "delete shopping item")
		return
	}

	c.Status(http.StatusNoContent)
}
