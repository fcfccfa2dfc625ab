//go:build !unix

package osver

func release() string {
	return ""
}
