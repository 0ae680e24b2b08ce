package handle

// defaultTable backs the package-level functions, which mirror the Table
// methods of the same name.
var defaultTable = NewTable()

// Default returns the table used by the package-level functions.
func Default() *Table { return defaultTable }

func NewDefault() Handle { return defaultTable.NewDefault() }

func NewBestOfFive() Handle { return defaultTable.NewBestOfFive() }

func NewNoAd() Handle { return defaultTable.NewNoAd() }

func NewCustom(setsToWin, tiebreakPoints uint8, finalSetTiebreak, noAdScoring bool) Handle {
	return defaultTable.NewCustom(setsToWin, tiebreakPoints, finalSetTiebreak, noAdScoring)
}

func Free(h Handle) { defaultTable.Free(h) }

func ScorePoint(h Handle, player uint8) bool { return defaultTable.ScorePoint(h, player) }

func Undo(h Handle) bool { return defaultTable.Undo(h) }

func GetScore(h Handle) Score { return defaultTable.GetScore(h) }

func CanUndo(h Handle) bool { return defaultTable.CanUndo(h) }

func IsComplete(h Handle) bool { return defaultTable.IsComplete(h) }

func GetWinner(h Handle) uint8 { return defaultTable.GetWinner(h) }

func PointCount(h Handle) uint32 { return defaultTable.PointCount(h) }

func Points(h Handle, buf []Point) bool { return defaultTable.Points(h, buf) }
