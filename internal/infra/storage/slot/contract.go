package slot

import "github.com/MoNiLBaRiYa/BookIt/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
