package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mijsu/LabVioUltimatum/pkg/common/models"
)

// classifyGeneric handles unrecognized panel types: every supplied key is
// echoed back as a normal finding without threshold evaluation. Keys are
// sorted so identical inputs yield identical output.
func classifyGeneric(values map[string]interface{}) *evaluation {
	eval := newEvaluation()

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		eval.add(models.ParameterFinding{
			Parameter:      key,
			Value:          strings.TrimSpace(fmt.Sprintf("%v", values[key])),
			NormalRange:    "Not evaluated",
			Status:         models.StatusNormal,
			Interpretation: "This value was not evaluated against a reference panel. Please consult your healthcare provider for interpretation.",
		})
	}

	return eval
}
