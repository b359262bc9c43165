package gitcfg

// Keys managed by gitproxy.
const (
	KeyHTTPProxy  = "http.proxy"
	KeyHTTPSProxy = "https.proxy"
)

// GetArgs returns the arguments that read a global config key.
func GetArgs(key string) []string {
	return []string{"config", "--global", key}
}

// SetArgs returns the arguments that write a global config key.
func SetArgs(key, value string) []string {
	return []string{"config", "--global", key, value}
}

// UnsetArgs returns the arguments that remove a global config key.
func UnsetArgs(key string) []string {
	return []string{"config", "--global", "--unset", key}
}
