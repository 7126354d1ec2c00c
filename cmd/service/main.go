// @title        Hello Web API
// @version      1.0
// @description  以固定大小 worker pool 處理請求的靜態網站伺服器
// @host         localhost:7878
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"github.com/labstack/gommon/log"
)

func main() {
	if err := run(cliArgs()); err != nil {
		log.Error(err)
		exitFunc(1)
	}
}
