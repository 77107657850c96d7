package providers

import (
	"github.com/staffdeck/staffdeck/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
)
