package nakama

const (
	// RpcSoloMatch is the Nakama RPC id clients call to open a match against the computer.
	RpcSoloMatch = "solo_match"

	// MatchNameJass is the authoritative match handler name registered with Nakama.
	MatchNameJass = "jass_solo"

	// MetadataTicket is the join metadata key carrying the ticket issued by RpcSoloMatch.
	MetadataTicket = "ticket"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound    int64 = 1
	OpPlayCard      int64 = 2
	OpExchangeTrump int64 = 3
	OpSwitchBlind   int64 = 4
	OpCardSettled   int64 = 5 // client finished animating a card

	// Server -> Client events
	OpRoundStarted   int64 = 101
	OpZoneChanged    int64 = 102 // hand and blind contents are sent privately
	OpTrumpChanged   int64 = 103
	OpCardPlayed     int64 = 104
	OpTurnChanged    int64 = 105
	OpTrickResolved  int64 = 106
	OpTrumpExchanged int64 = 107
	OpBlindSwitched  int64 = 108
	OpRoundEnded     int64 = 109
	OpError          int64 = 110
	OpMatchSnapshot  int64 = 111
)

// Error codes sent with OpError.
const (
	ErrCodeBadRequest = 400
	ErrCodeForbidden  = 403
	ErrCodeConflict   = 409
)
