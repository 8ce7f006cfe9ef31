package common

// AuthorizationHeader is the HTTP header carrying the bearer credential on
// authenticated calls.
const AuthorizationHeader = "Authorization"

// BearerPrefix prefixes the token value inside AuthorizationHeader.
const BearerPrefix = "Bearer "

// GroupSize caps the membership of a bridge group. Acceptances grow a group
// toward this size; the client never mutates membership itself.
const GroupSize = 4

// CandidateLimit bounds how many candidates the matching endpoint returns.
const CandidateLimit = 3
