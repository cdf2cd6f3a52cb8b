// Package api is the HTTP surface over a node. It only decodes requests,
// delegates to the node service, and maps ledger errors onto status codes.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/moncayo/libchain/api/handlers"
	"github.com/moncayo/libchain/node"
	"github.com/moncayo/libchain/observability"
)

// Server is the HTTP API server for one node.
type Server struct {
	service *node.Service
	port    string
	router  *gin.Engine
}

// NewServer builds a server with routes registered.
func NewServer(service *node.Service, port string, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestLogger(logger))

	s := &Server{
		service: service,
		port:    port,
		router:  router,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", handlers.Health(s.service))

	s.router.POST("/book/new", handlers.NewBook(s.service))
	s.router.GET("/book/chain/:book_id", handlers.BookChain(s.service))
	s.router.GET("/books", handlers.ListBooks(s.service))
	s.router.POST("/book/exchange", handlers.Exchange(s.service))

	s.router.POST("/nodes/register", handlers.RegisterNodes(s.service))

	s.router.POST("/broadcast/block", handlers.BroadcastBlock(s.service))
	s.router.POST("/broadcast/book/:book_id", handlers.BroadcastBook(s.service))
}

// Router exposes the configured engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving HTTP requests (blocks forever).
func (s *Server) Start() error {
	return s.router.Run(":" + s.port)
}
