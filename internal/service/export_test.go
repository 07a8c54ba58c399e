package service

// HashTokenForTest exposes token hashing to the black-box tests.
var HashTokenForTest = hashToken
