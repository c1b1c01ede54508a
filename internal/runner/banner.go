package runner

import (
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lansweep/pkg/version"
)

const banner = `
   __                                         
  / /___ _____  ______      _____  ___  ____ 
 / / __ '/ __ \/ ___/ | /| / / _ \/ _ \/ __ \
/ / /_/ / / / (__  )| |/ |/ /  __/  __/ /_/ /
/_/\__,_/_/ /_/____/ |__/|__/\___/\___/ .___/ 
                                     /_/      
`

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\t%s\n\n", version.GetVersion())
}
