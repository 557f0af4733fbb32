package payment

import "github.com/m04kA/SMC-PitchBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
