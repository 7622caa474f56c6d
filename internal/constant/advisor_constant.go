package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	ChatSessionModeFull       = "FULL"
	ChatSessionModeContextual = "CONTEXTUAL"
)

// Logger modules
const (
	LogModuleAdvisor   = "ADVISOR"
	LogModuleCatalog   = "CATALOG"
	LogModuleRecoLog   = "RECO_LOG"
	LogModuleRateLimit = "RATE_LIMIT"
	LogModuleHTTP      = "HTTP"
)

// Event types published on the NATS bus
const (
	EventSessionStarted        = "SESSION_STARTED"
	EventRecommendationServed  = "RECOMMENDATION_SERVED"
	EventRecommendationNoMatch = "RECOMMENDATION_EMPTY"
)

const (
	AdvisorFailureMessage   = "Je n'ai pas pu répondre. Réessayons."
	AdvisorRateLimitMessage = "Trop de requêtes. Réessayez dans une minute."
	InvalidRequestMessage   = "Données invalides."
	NotFoundMessage         = "Ressource introuvable."
)
