package domain

// KeyPrefix namespaces every key the service writes to the shared cache store.
const KeyPrefix = "workermatch:"
