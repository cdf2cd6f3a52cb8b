package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moncayo/libchain/ledger"
	"github.com/moncayo/libchain/node"
)

// Health reports liveness and the node's identity.
func Health(svc *node.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"node":   svc.NodeID(),
		})
	}
}

// NewBook registers a new item. The genesis block records this node as the
// initial holder.
func NewBook(svc *node.Service) gin.HandlerFunc {
	type request struct {
		BookID string `json:"book_id" binding:"required"`
	}

	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "book_id is required"})
			return
		}

		genesis, err := svc.CreateChain(req.BookID)
		if err != nil {
			if errors.Is(err, ledger.ErrDuplicateID) {
				c.JSON(http.StatusConflict, gin.H{"error": "this book already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, genesis)
	}
}

// BookChain returns the full provenance chain of one item.
func BookChain(svc *node.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		blocks, err := svc.GetChain(c.Param("book_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		c.JSON(http.StatusOK, blocks)
	}
}

// ListBooks returns the ids of every tracked item.
func ListBooks(svc *node.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"books": svc.ChainIDs()})
	}
}

// Exchange transfers custody of an item from this node to a recipient
// address. The node signs the authorization itself.
func Exchange(svc *node.Service) gin.HandlerFunc {
	type request struct {
		BookID    string `json:"book_id" binding:"required"`
		Recipient string `json:"recipient" binding:"required"`
	}

	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "book_id and recipient are required"})
			return
		}

		block, err := svc.ApplyTransfer(req.BookID, req.Recipient)
		if err != nil {
			c.JSON(transferStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, block)
	}
}

// transferStatus maps ledger errors to response codes.
func transferStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrChainNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrSelfTransfer),
		errors.Is(err, ledger.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotCurrentHolder),
		errors.Is(err, ledger.ErrInvalidSignature):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
