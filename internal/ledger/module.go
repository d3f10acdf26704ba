package ledger

import "go.uber.org/fx"

// Module wires the inventory ledger for dependency injection.
var Module = fx.Provide(New)
