package crypto

import "github.com/zhigui-projects/go-pemsign/common/log"

var logger = log.GetLogger("module", "crypto")
