package externalapi

// KType defines the size of GHOSTDAG consensus algorithm K parameter.
type KType byte
