package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/naka-gawa/portfolio/cmd"
)

func main() {
	cmd.Execute()
}
