// Package scoring converts attributed turns plus sentiment, tone, and
// intent signals into a four-dimension report card with bounded integer
// scores.
package scoring
