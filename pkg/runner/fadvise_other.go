//go:build !linux

package runner

import "os"

func adviseSequential(*os.File) error {
	return nil
}
