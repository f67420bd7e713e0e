package flows

// Deps groups flow dependency sets. The root engine builds this once and
// delegates each session operation to the matching flow.
type Deps struct {
	Login     LoginDeps
	Logout    LogoutDeps
	Rehydrate RehydrateDeps
}
