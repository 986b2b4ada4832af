package utils

// FindByID 按ID挑选数据
// 参数：dataMap-ID到数据的映射，data-全部数据，ids-需要的ID
// 返回：ids为空时返回全部数据；否则按ids顺序返回找到的数据，以及不存在的ID
func FindByID[K comparable, T any](dataMap map[K]T, data []T, ids []K) (found []T, missing []K) {
	if len(ids) == 0 {
		return data, nil
	}
	found = make([]T, 0, len(ids))
	for _, id := range ids {
		if d, ok := dataMap[id]; ok {
			found = append(found, d)
		} else {
			missing = append(missing, id)
		}
	}
	return
}
