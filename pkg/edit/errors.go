package edit

import "errors"

var (
	// ErrInsufficientSelection is returned when an operation gets fewer
	// operand facets than it needs
	ErrInsufficientSelection = errors.New("insufficient selection")
	// ErrTransactionOpen is returned when an edit starts while another
	// transaction on the same geometry is still open
	ErrTransactionOpen = errors.New("transaction already open")
)
