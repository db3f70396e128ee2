package enhance

import "github.com/m-mizutani/goerr/v2"

var errEmptyResponse = goerr.New("LLM returned an empty response")
