// package services talks to remote setlist providers.
//
// [SetlistFMService] walks the paginated setlist.fm listings for an artist or a user's attended
// concerts, spacing requests with a [Gate] and mapping each page to [models.Setlist] values.
package services
