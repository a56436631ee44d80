package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
     ____            _     _                         _   ____                       _   
    |  _ \  __ _ ___| |__ | |__   ___   __ _ _ __ __| | |  _ \ ___ _ __   ___  _ __| |_ 
    | | | |/ _' / __| '_ \| '_ \ / _ \ / _' | '__/ _' | | |_) / _ \ '_ \ / _ \| '__| __|
    | |_| | (_| \__ \ | | | |_) | (_) | (_| | | | (_| | |  _ <  __/ |_) | (_) | |  | |_ 
    |____/ \__,_|___/_| |_|_.__/ \___/ \__,_|_|  \__,_| |_| \_\___| .__/ \___/|_|   \__|
                                                                  |_|                   
    `
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))

	if versionStr == "" {
		versionStr = version.FormatVersion()
	}
	fmt.Println(blue(fmt.Sprintf("Dashboard Report CLI (v%s)", versionStr)))
}
