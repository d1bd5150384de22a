package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck  = "\uf00c" // check
	IconX      = "\uf00d" // x
	IconWarn   = "\uf071" // warning
	IconLayout = "\uf0db" // columns
	IconServer = "\uf233" // server
)
