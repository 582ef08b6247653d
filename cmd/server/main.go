package main

import (
	_ "github.com/eleven-am/sight-backend/docs"
	"github.com/eleven-am/sight-backend/internal/bootstrap"
)

// @title Sight Backend API
// @version 1.0.0
// @description Visual assistance API: scene analysis, clarification and follow-up conversation

// @host api.sight.example.com
// @BasePath /v1

func main() {
	bootstrap.Run()
}
