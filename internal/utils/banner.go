/*
 This file has implementation of the main banner for the tool. It is used in cmd/root.go
*/
package utils

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const bannerArt = `

__        ___    ____  ____
\ \      / / \  / ___||  _ \
 \ \ /\ / / _ \ \___ \| |_) |
  \ V  V / ___ \ ___) |  __/
   \_/\_/_/   \_\____/|_|

`

func DisplayBanner() {
	color.Magenta(strings.TrimSpace(bannerArt))
	fmt.Println()
	fmt.Println("WASP - Windows Audit & Security Profiler")
	fmt.Println("----------------------------------------")
}
