package services

import "time"

// now is swapped out in tests.
var now = time.Now
