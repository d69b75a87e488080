package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/diillson/aws-daily-cost-report/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(w io.Writer) {
	banner := `
     ___        ______    ____        _ _          ____          _   
    / \ \      / / ___|  |  _ \  __ _(_) |_   _   / ___|___  ___| |_ 
   / _ \ \ /\ / /\___ \  | | | |/ _' | | | | | | | |   / _ \/ __| __|
  / ___ \ V  V /  ___) | | |_| | (_| | | | |_| | | |__| (_) \__ \ |_ 
 /_/   \_\_/\_/  |____/  |____/ \__,_|_|_|\__, |  \____\___/|___/\__|
                                          |___/                      
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(w, red(banner))
	fmt.Fprintln(w, blue(fmt.Sprintf("AWS Daily Cost Report (v%s)", version.FormatVersion())))
}
