// Command travian-tools plans how to spend village resources on troops.
// CLI handling lives in the cobra commands under cmd/.
package main

import (
	"github.com/retterrudi/travian-tools/cmd"
)

func main() {
	cmd.Execute()
}
