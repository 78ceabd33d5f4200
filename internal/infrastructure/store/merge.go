package store

// deepMerge overlays src onto dst and returns dst. Nested objects merge
// recursively; everything else (including arrays) is replaced wholesale.
// This mirrors document-store merge-on-write semantics: a partial update
// never clears fields it does not mention.
func deepMerge(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = map[string]interface{}{}
	}
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]interface{})
		dstMap, dstIsMap := dst[key].(map[string]interface{})
		if srcIsMap && dstIsMap {
			dst[key] = deepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
	return dst
}
