//go:build ganttdebug

package gantt

const debugColors = true
