package config

import "time"

// GenFilename generates the default output filename when -o is not
// given, matching the original demodulator's gen_fname().
func GenFilename(now time.Time) string {
	return now.Format("LRPT_2006_01_02-15_04.s")
}
