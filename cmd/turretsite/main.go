// Command turretsite serves the Arsenal anti-drone turret landing site.
//
// @title                      Arsenal turret landing site
// @version                    1.0
// @description                Public landing pages, contact intake, document downloads and the back-office JSON API.
// @BasePath                   /
// @securityDefinitions.basic  BasicAuth
package main

import (
	"os"

	"github.com/tbourn/turret-landing/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
