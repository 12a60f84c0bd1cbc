/*
Copyright © 2025 docqa-be
*/
package main

import (
	"log"

	"github.com/joho/godotenv"

	"docqa-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
}
