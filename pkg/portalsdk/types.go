package portalsdk

// ============================================================================
// Session
// ============================================================================

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

// MasterRequest is the body of POST /v1/auth/master. OTP is only required
// when the server has a TOTP secret configured.
type MasterRequest struct {
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

// Identity is who a session acts as.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// SessionResponse describes the caller's session. Token fields are only set
// by the login and master endpoints.
type SessionResponse struct {
	User          *Identity `json:"user"`
	Authenticated bool      `json:"authenticated"`
	Token         string    `json:"token,omitempty"`
	TokenType     string    `json:"token_type,omitempty"`
	ExpiresAt     int64     `json:"expires_at,omitempty"` // epoch seconds
}

// NavigationResponse answers whether the caller may open a target.
type NavigationResponse struct {
	Target    string `json:"target"`
	Allowed   bool   `json:"allowed"`
	Challenge bool   `json:"challenge"`
}

// ============================================================================
// Members
// ============================================================================

// RegisterRequest is the public self-registration form.
type RegisterRequest struct {
	FullName  string `json:"fullName"`
	CPF       string `json:"cpf"`
	CNS       string `json:"cns"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD
	Gender    string `json:"gender,omitempty"`
	Workplace string `json:"workplace"`
	Team      string `json:"team"`
	MicroArea string `json:"microArea"`
	AreaType  string `json:"areaType"`
}

// Member is a directory entry as returned by the API. Passwords never leave
// the server.
type Member struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	CPF          string `json:"cpf"`
	CNS          string `json:"cns,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Workplace    string `json:"workplace,omitempty"`
	MicroArea    string `json:"microArea,omitempty"`
	Team         string `json:"team,omitempty"`
	AreaType     string `json:"areaType,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	RegisteredAt string `json:"registeredAt,omitempty"` // RFC 3339
	Status       string `json:"status"`
	Role         string `json:"role"`
}

// MemberRequest creates or replaces a member. An empty Password keeps the
// stored one on update.
type MemberRequest struct {
	Member
	Password string `json:"password,omitempty"`
}

// ListMembersResponse is the directory snapshot.
type ListMembersResponse struct {
	Members []Member `json:"members"`
}

type RoleRequest struct {
	Role string `json:"role"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type PasswordRequest struct {
	Password string `json:"password"`
}

// Card is the printable member ID card.
type Card struct {
	MemberID     string `json:"memberId"`
	FullName     string `json:"fullName"`
	CPF          string `json:"cpf"`
	CNS          string `json:"cns,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"`
	RoleLabel    string `json:"roleLabel"`
	Workplace    string `json:"workplace"`
	TeamArea     string `json:"teamArea"`
	Zone         string `json:"zone"`
	Status       string `json:"status"`
	ProfileImage string `json:"profileImage,omitempty"`
	PrintName    string `json:"printName"`
}

// ============================================================================
// Indicators and news
// ============================================================================

type APSIndicator struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CityValue   string `json:"cityValue"`
	Status      string `json:"status"`
}

type DentalIndicator struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// IndicatorsResponse carries both indicator panels.
type IndicatorsResponse struct {
	APS    []APSIndicator    `json:"aps"`
	Dental []DentalIndicator `json:"dental"`
}

type NewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Date    string `json:"date"`
	URL     string `json:"url"`
}

// NewsResponse is always present, possibly with no items.
type NewsResponse struct {
	Items []NewsItem `json:"items"`
}

// ============================================================================
// Signing keys
// ============================================================================

// SigningKey describes a session-token signing key. Key material is never
// returned.
type SigningKey struct {
	Kid       string `json:"kid"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt,omitempty"` // RFC 3339
	RetiredAt string `json:"retiredAt,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

type ListKeysResponse struct {
	Keys []SigningKey `json:"keys"`
}

type RotateKeysRequest struct {
	// RetireExisting retires every current key once the new one is active.
	RetireExisting bool `json:"retireExisting"`
}

type RotateKeysResponse struct {
	NewKey     SigningKey   `json:"newKey"`
	Retired    []SigningKey `json:"retired,omitempty"`
	ActiveKeys int          `json:"activeKeys"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency /readyz looks at.
type HealthChecks struct {
	Database  string `json:"database"`
	Signer    string `json:"signer"`
	Directory string `json:"directory"`
}
