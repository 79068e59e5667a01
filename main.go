package main

import (
	"fmt"
	"os"

	"github.com/mhasan/lifeos/backend"
	"github.com/mhasan/lifeos/frontend"
)

func main() {
	mode := "all"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "backend":
		backend.RunBackend()
	case "frontend":
		frontend.RunFrontend()
	case "all":
		go backend.RunBackend()
		frontend.RunFrontend()
	default:
		fmt.Println("usage: lifeos [backend|frontend]")
		os.Exit(1)
	}
}
