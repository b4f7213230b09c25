//go:build !ganttdebug

package gantt

const debugColors = false
