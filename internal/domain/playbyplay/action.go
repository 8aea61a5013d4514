package playbyplay

// Kind names an Action variant. The set is closed.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPeriod
	KindJumpBall
	KindPoints
	KindRebound
	KindStoppage
	KindBlock
	KindTurnover
	KindSteal
	KindTimeout
	KindSubstitution
	KindFoul
	KindFreeThrow
	KindViolation
	KindGame
)

var kindNames = [...]string{
	KindUnknown:      "unknown",
	KindPeriod:       "period",
	KindJumpBall:     "jumpBall",
	KindPoints:       "points",
	KindRebound:      "rebound",
	KindStoppage:     "stoppage",
	KindBlock:        "block",
	KindTurnover:     "turnover",
	KindSteal:        "steal",
	KindTimeout:      "timeout",
	KindSubstitution: "substitution",
	KindFoul:         "foul",
	KindFreeThrow:    "freeThrow",
	KindViolation:    "violation",
	KindGame:         "game",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

func ParseKind(v string) (Kind, bool) {
	for i, name := range kindNames {
		if name == v {
			return Kind(i), true
		}
	}
	return KindUnknown, false
}

// Info is the payload every action carries.
type Info struct {
	Sequence    uint64
	Clock       string
	Description string
	HomeScore   uint16
	AwayScore   uint16
	Quarter     uint8
}

// Action is one classified play-by-play event. Implementations live in this
// package only; construct them with New or Classify.
type Action interface {
	Kind() Kind
	Info() Info
	sealed()
}

type base struct{ info Info }

func (b base) Info() Info { return b.info }
func (base) sealed()      {}

type (
	Unknown      struct{ base }
	Period       struct{ base }
	JumpBall     struct{ base }
	Points       struct{ base }
	Rebound      struct{ base }
	Stoppage     struct{ base }
	Block        struct{ base }
	Turnover     struct{ base }
	Steal        struct{ base }
	Timeout      struct{ base }
	Substitution struct{ base }
	Foul         struct{ base }
	FreeThrow    struct{ base }
	Violation    struct{ base }
	Game         struct{ base }
)

func (Unknown) Kind() Kind      { return KindUnknown }
func (Period) Kind() Kind       { return KindPeriod }
func (JumpBall) Kind() Kind     { return KindJumpBall }
func (Points) Kind() Kind       { return KindPoints }
func (Rebound) Kind() Kind      { return KindRebound }
func (Stoppage) Kind() Kind     { return KindStoppage }
func (Block) Kind() Kind        { return KindBlock }
func (Turnover) Kind() Kind     { return KindTurnover }
func (Steal) Kind() Kind        { return KindSteal }
func (Timeout) Kind() Kind      { return KindTimeout }
func (Substitution) Kind() Kind { return KindSubstitution }
func (Foul) Kind() Kind         { return KindFoul }
func (FreeThrow) Kind() Kind    { return KindFreeThrow }
func (Violation) Kind() Kind    { return KindViolation }
func (Game) Kind() Kind         { return KindGame }

// New builds the variant for kind.
func New(kind Kind, info Info) Action {
	b := base{info: info}
	switch kind {
	case KindPeriod:
		return Period{b}
	case KindJumpBall:
		return JumpBall{b}
	case KindPoints:
		return Points{b}
	case KindRebound:
		return Rebound{b}
	case KindStoppage:
		return Stoppage{b}
	case KindBlock:
		return Block{b}
	case KindTurnover:
		return Turnover{b}
	case KindSteal:
		return Steal{b}
	case KindTimeout:
		return Timeout{b}
	case KindSubstitution:
		return Substitution{b}
	case KindFoul:
		return Foul{b}
	case KindFreeThrow:
		return FreeThrow{b}
	case KindViolation:
		return Violation{b}
	case KindGame:
		return Game{b}
	default:
		return Unknown{b}
	}
}
