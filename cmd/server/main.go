package main

import (
	"os"

	"portagees/backend/internal/app"
)

//	@title			Portagees Chat API
//	@version		1.0
//	@description	Backend for a conversational Portuguese learning assistant.
//	@BasePath		/

func main() {
	os.Exit(app.Run())
}
