package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moncayo/libchain/ledger"
	"github.com/moncayo/libchain/ledger/registry"
	"github.com/moncayo/libchain/node"
)

// BroadcastBlock receives a transfer relayed by a peer and applies it
// locally. Re-delivered transfers resolve to the existing block.
func BroadcastBlock(svc *node.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var transfer registry.Transfer
		if err := c.ShouldBindJSON(&transfer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transfer"})
			return
		}

		block, err := svc.AcceptTransfer(transfer)
		if err != nil {
			c.JSON(transferStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, block)
	}
}

// BroadcastBook receives a genesis block for a chain another node created.
// A chain we already track is not an error here: broadcasts may be retried.
func BroadcastBook(svc *node.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var genesis ledger.Block
		if err := c.ShouldBindJSON(&genesis); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid genesis block"})
			return
		}

		id := c.Param("book_id")
		if err := svc.AcceptChain(id, genesis); err != nil {
			if errors.Is(err, ledger.ErrDuplicateID) {
				c.JSON(http.StatusOK, gin.H{"status": "already known"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "accepted"})
	}
}
