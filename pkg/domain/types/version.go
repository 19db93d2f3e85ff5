package types

// Version is the relflow release version, overwritten at build time with
// -ldflags "-X github.com/m-mizutani/relflow/pkg/domain/types.Version=..."
var Version = "dev"
