package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moncayo/libchain/node"
)

// RegisterNodes adds a list of peer addresses to the node's peer set.
func RegisterNodes(svc *node.Service) gin.HandlerFunc {
	type request struct {
		Nodes []string `json:"nodes"`
	}

	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Nodes) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "please supply a valid list of nodes"})
			return
		}

		for _, addr := range req.Nodes {
			if err := svc.RegisterPeer(addr); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":     "new nodes have been added",
			"total_nodes": svc.Peers(),
		})
	}
}
