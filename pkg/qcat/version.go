package qcat

// Version and Build are set at compile time via ldflags:
//
//	go build -ldflags "-X github.com/quakepy/qcat/pkg/qcat.Version=v1.0.0"
var (
	Version = "v0.1.0"
	Build   = "n/a"
)
